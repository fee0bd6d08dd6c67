// Command assertchain runs the built-in cart scenarios through the
// assertion engine and reports the first failure of every case.
package main

import "os"

func main() {
	os.Exit(Execute())
}
