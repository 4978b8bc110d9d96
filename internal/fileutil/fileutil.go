// Package fileutil holds file modes shared by the writers of definitions.
package fileutil

import "os"

// DefinitionMode is the permission of written definitions and scratch
// copies of inline content. API descriptions may be private.
const DefinitionMode os.FileMode = 0o600
