package passes

import "github.com/vecdoc/svgopt/pass"

// Default is the standard pipeline, in registry form. The runner orders
// passes by category regardless of the slice order here.
func Default() []pass.Instance {
	return []pass.Instance{
		{Name: "removeDoctype"},
		{Name: "removeComments"},
		{Name: "removeMetadata"},
		{Name: "cleanupIds"},
		{Name: "convertPathData"},
		{Name: "cleanupNumericValues"},
		{Name: "removeEmptyContainers"},
	}
}
