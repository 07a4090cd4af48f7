package socialimages

// ContextEnv is the environment variable holding the build context.
const ContextEnv = "CONTEXT"

// ProductionContext is the ContextEnv value that enables rendering.
const ProductionContext = "production"

// IsProduction reports whether buildContext is the production build context.
// Image generation is skipped for every other value, including empty.
func IsProduction(buildContext string) bool {
	return buildContext == ProductionContext
}
