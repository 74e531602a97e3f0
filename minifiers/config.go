package minifiers

import (
	"github.com/sunwei/templatehtml/config"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"
)

type minifyConfig struct {
	DisableHTML bool
	DisableCSS  bool
	DisableJS   bool
	DisableJSON bool
	DisableSVG  bool

	Tdewolff tdewolffConfig
}

type tdewolffConfig struct {
	HTML html.Minifier
	CSS  css.Minifier
	JS   js.Minifier
	JSON json.Minifier
	SVG  svg.Minifier
}

// The HTML settings collapse whitespace, drop comments and attributes
// holding their default value, and keep the document and end tags.
// Embedded style, script and svg are minified by the CSS, JS and SVG
// minifiers. The doctype is always written as <!doctype html>.
var defaultTdewolffConfig = tdewolffConfig{
	HTML: html.Minifier{
		KeepDocumentTags:        true,
		KeepConditionalComments: false,
		KeepEndTags:             true,
		KeepDefaultAttrVals:     false,
		KeepWhitespace:          false,
	},
	CSS: css.Minifier{
		Precision: 0,
		KeepCSS2:  true,
	},
	JS:   js.Minifier{},
	JSON: json.Minifier{},
	SVG: svg.Minifier{
		Precision: 0,
	},
}

var defaultConfig = minifyConfig{
	Tdewolff: defaultTdewolffConfig,
}

func decodeConfig(cfg config.Provider) (conf minifyConfig, err error) {
	conf = defaultConfig
	if cfg == nil {
		return
	}
	conf.DisableHTML = cfg.GetBool("minify.disableHTML")
	conf.DisableCSS = cfg.GetBool("minify.disableCSS")
	conf.DisableJS = cfg.GetBool("minify.disableJS")
	conf.DisableJSON = cfg.GetBool("minify.disableJSON")
	conf.DisableSVG = cfg.GetBool("minify.disableSVG")
	return
}
