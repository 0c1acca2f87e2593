/*
Package identicon generates identicons: small symmetric avatars derived from a hash,
usually the hash of a user name, used as a default profile picture.

The first 15 hex digits of the hash draw a 5x5 pattern mirrored around its vertical
axis, the last 7 digits select the hue of the foreground color. The result is
serialized either as a PNG image, produced by a self contained encoder (1-bit palette,
stored deflate blocks), or as SVG markup.

The package provides a command line interface, supporting various flags for generating
a single identicon or a whole batch of them. To check the supported commands type:

	$ identicon --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/esimov/identicon"
	)

	func main() {
		opts := identicon.DefaultOptions()
		opts.Size = 128

		png, err := identicon.Generate(identicon.HashIdentity("gopher"), opts)
		if err != nil {
			fmt.Printf("Error generating the identicon: %s", err.Error())
			return
		}
		os.WriteFile("gopher.png", png, 0644)
	}
*/
package identicon
