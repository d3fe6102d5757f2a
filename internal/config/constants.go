package config

const (
	// ConfigPathCatalog is the JSON file catalog.LoadFromFile reads at
	// boot to populate hero/skill/equipment/stage/banner templates.
	ConfigPathCatalog = "configs/catalog.json"
)
