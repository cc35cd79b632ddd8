package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# CityReport configuration
version: "1.0"

server:
  # Base URL of the analysis backend
  base_url: "http://localhost:8000"
  # Analysis endpoint, relative to base_url
  path: "/api/run-analysis"
  user_agent: "cityreport"

request:
  # Client-side deadline for one analysis run. The backend may need
  # 10-15 minutes for a large city.
  timeout: 18m

output:
  # text | json | markdown | html | csv
  default_format: "text"
  # auto | always | never
  color_mode: "auto"
  verbose: false

ui:
  # panels: report, links, PDFs and statistics inline
  # modal: compact summary with a details dialog
  layout: "modal"
  # default | high-contrast | minimal
  theme: "default"
`
}

// MinimalSampleConfig returns a compact configuration file
func MinimalSampleConfig() string {
	return `version: "1.0"
server:
  base_url: "http://localhost:8000"
request:
  timeout: 18m
`
}
