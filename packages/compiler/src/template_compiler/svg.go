package template_compiler

// IsStandardSvgAttribute reports whether attributeName is a standard
// attribute of the SVG element nodeName. Names are case sensitive.
func IsStandardSvgAttribute(nodeName, attributeName string) bool {
	if svgPresentationElements[nodeName] && svgPresentationAttributes[attributeName] {
		return true
	}
	for _, name := range svgElementAttributes[nodeName] {
		if name == attributeName {
			return true
		}
	}
	return false
}

var svgPresentationElements = setOf(
	"a", "altGlyph", "animate", "animateColor", "circle", "clipPath", "defs", "ellipse",
	"feBlend", "feColorMatrix", "feComponentTransfer", "feComposite", "feConvolveMatrix",
	"feDiffuseLighting", "feDisplacementMap", "feFlood", "feGaussianBlur", "feImage", "feMerge",
	"feMorphology", "feOffset", "feSpecularLighting", "feTile", "feTurbulence", "filter", "font",
	"foreignObject", "g", "glyph", "glyphRef", "image", "line", "linearGradient", "marker", "mask",
	"missing-glyph", "path", "pattern", "polygon", "polyline", "radialGradient", "rect", "stop",
	"svg", "switch", "symbol", "text", "textPath", "tref", "tspan", "use",
)

var svgPresentationAttributes = setOf(
	"alignment-baseline", "baseline-shift", "clip-path", "clip-rule", "clip",
	"color-interpolation-filters", "color-interpolation", "color-profile", "color-rendering",
	"color", "cursor", "direction", "display", "dominant-baseline", "enable-background",
	"fill-opacity", "fill-rule", "fill", "filter", "flood-color", "flood-opacity", "font-family",
	"font-size-adjust", "font-size", "font-stretch", "font-style", "font-variant", "font-weight",
	"glyph-orientation-horizontal", "glyph-orientation-vertical", "image-rendering", "kerning",
	"letter-spacing", "lighting-color", "marker-end", "marker-mid", "marker-start", "mask",
	"opacity", "overflow", "pointer-events", "shape-rendering", "stop-color", "stop-opacity",
	"stroke-dasharray", "stroke-dashoffset", "stroke-linecap", "stroke-linejoin",
	"stroke-miterlimit", "stroke-opacity", "stroke-width", "stroke", "text-anchor",
	"text-decoration", "text-rendering", "unicode-bidi", "visibility", "word-spacing", "writing-mode",
)

// geometry and core attributes of the common drawing elements
var svgElementAttributes = map[string][]string{
	"a":              {"class", "id", "style", "target", "transform", "xlink:href", "xlink:title"},
	"circle":         {"class", "cx", "cy", "id", "r", "style", "transform"},
	"clipPath":       {"class", "clipPathUnits", "id", "style", "transform"},
	"defs":           {"class", "id", "style", "transform"},
	"ellipse":        {"class", "cx", "cy", "id", "rx", "ry", "style", "transform"},
	"g":              {"class", "id", "style", "transform"},
	"image":          {"class", "height", "id", "preserveAspectRatio", "style", "transform", "width", "x", "xlink:href", "y"},
	"line":           {"class", "id", "style", "transform", "x1", "x2", "y1", "y2"},
	"linearGradient": {"class", "gradientTransform", "gradientUnits", "id", "spreadMethod", "style", "x1", "x2", "xlink:href", "y1", "y2"},
	"marker":         {"class", "id", "markerHeight", "markerUnits", "markerWidth", "orient", "preserveAspectRatio", "refX", "refY", "style", "viewBox"},
	"mask":           {"class", "height", "id", "maskContentUnits", "maskUnits", "style", "width", "x", "y"},
	"path":           {"class", "d", "id", "pathLength", "style", "transform"},
	"pattern":        {"class", "height", "id", "patternContentUnits", "patternTransform", "patternUnits", "preserveAspectRatio", "style", "viewBox", "width", "x", "xlink:href", "y"},
	"polygon":        {"class", "id", "points", "style", "transform"},
	"polyline":       {"class", "id", "points", "style", "transform"},
	"radialGradient": {"class", "cx", "cy", "fx", "fy", "gradientTransform", "gradientUnits", "id", "r", "spreadMethod", "style", "xlink:href"},
	"rect":           {"class", "height", "id", "rx", "ry", "style", "transform", "width", "x", "y"},
	"stop":           {"class", "id", "offset", "style"},
	"svg":            {"baseProfile", "class", "contentScriptType", "contentStyleType", "height", "id", "preserveAspectRatio", "style", "version", "viewBox", "width", "x", "y", "zoomAndPan"},
	"symbol":         {"class", "id", "preserveAspectRatio", "style", "viewBox"},
	"text":           {"class", "dx", "dy", "id", "lengthAdjust", "rotate", "style", "textLength", "transform", "x", "y"},
	"textPath":       {"class", "id", "lengthAdjust", "method", "spacing", "startOffset", "style", "textLength", "xlink:href"},
	"tspan":          {"class", "dx", "dy", "id", "lengthAdjust", "rotate", "style", "textLength", "x", "y"},
	"use":            {"class", "height", "id", "style", "transform", "width", "x", "xlink:href", "y"},
}

func setOf(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
