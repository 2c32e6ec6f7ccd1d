package gradle

const (
	// File Names
	BuildScriptKts           = "build.gradle.kts"
	BuildScriptGroovy        = "build.gradle"
	GradlePropertiesFileName = "gradle.properties"
	VersionCatalogPath       = "gradle/libs.versions.toml"

	// Environment Variables
	envProjectPrefix = "ORG_GRADLE_PROJECT_"

	// Script Blocks/Keywords
	blockAndroid       = "android"
	blockDefaultConfig = "defaultConfig"
	blockBuildTypes    = "buildTypes"
	blockBuildFeatures = "buildFeatures"
	blockDependencies  = "dependencies"
	blockBuildscript   = "buildscript"
	blockExt           = "ext"

	// Version catalog accessor prefixes
	catalogPrefix        = "libs."
	catalogPluginsPrefix = "libs.plugins."
	catalogBundlesPrefix = "libs.bundles."
)
