// Package socialimages renders social preview images for the pages of a
// static site by loading an HTML template in a headless browser, filling in
// each page's title, cover and features, and capturing a PNG per page.
package socialimages

import "github.com/root4loot/goutils/log"

func init() {
	log.Init("socialimages")
}

// SetLogLevel sets the log level. Silence wins over debug.
func SetLogLevel(debug, silence bool) {
	if silence {
		log.SetLevel(log.FatalLevel)
	} else if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}
