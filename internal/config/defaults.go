package config

// GetDefaults returns the default configuration values. The relative paths
// mirror the repo layout: the template and allow-list files sit next to the
// WAF folder under the root.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"root":          ".",
		"template":      "waf_check_template.yml",
		"waf_dir":       "WAF",
		"labels":        "labels.yml",
		"validations":   "validations.yml",
		"resources":     "epic_resources.yml",
		"output_dir":    "excel",
		"pattern":       "*.yml,*.yaml",
		"show_progress": true,
	}
}
