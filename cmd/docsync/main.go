// Command docsync prepares, inspects and reduces API definitions.
package main

import "github.com/docsync/docsync/cmd/docsync/commands"

func main() {
	commands.Execute()
}
