package testcases

// All contains all test cases, organized by category.
var All = map[string][]TestCase{
	"fill":      fillCases,
	"curve":     curveCases,
	"subpath":   subpathCases,
	"ctm":       ctmCases,
	"stroke":    strokeCases,
	"dash":      dashCases,
	"complex":   complexCases,
	"precision": precisionCases,
	"large":     largeCases,
}
