package pathutil

import "strings"

// OAS 2.0 reference prefixes
const (
	RefPrefixDefinitions         = "#/definitions/"
	RefPrefixParameters          = "#/parameters/"
	RefPrefixResponses           = "#/responses/"
	RefPrefixSecurityDefinitions = "#/securityDefinitions/"
)

// RefPrefixComponents prefixes every OAS 3.x component reference.
const RefPrefixComponents = "#/components/"

// Component section names (OAS 3.x).
const (
	SectionSchemas         = "schemas"
	SectionResponses       = "responses"
	SectionParameters      = "parameters"
	SectionExamples        = "examples"
	SectionRequestBodies   = "requestBodies"
	SectionHeaders         = "headers"
	SectionSecuritySchemes = "securitySchemes"
	SectionLinks           = "links"
	SectionCallbacks       = "callbacks"
	SectionPathItems       = "pathItems"
)

// ComponentSections lists the OAS 3.x component sections in the order they
// appear in the specification.
var ComponentSections = []string{
	SectionSchemas,
	SectionResponses,
	SectionParameters,
	SectionExamples,
	SectionRequestBodies,
	SectionHeaders,
	SectionSecuritySchemes,
	SectionLinks,
	SectionCallbacks,
	SectionPathItems,
}

// ComponentRef builds "#/components/{section}/{name}" with name escaped.
func ComponentRef(section, name string) string {
	return RefPrefixComponents + section + "/" + EscapeToken(name)
}

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string {
	return ComponentRef(SectionSchemas, name)
}

// ParseComponentRef splits an internal component reference into its section
// and unescaped name. ok is false for anything that is not
// "#/components/{section}/{name}" (deeper pointers still report the
// top-level component they live in).
func ParseComponentRef(ref string) (section, name string, ok bool) {
	rest, found := strings.CutPrefix(ref, RefPrefixComponents)
	if !found {
		return "", "", false
	}
	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], UnescapeToken(parts[1]), true
}

// RewriteOAS2Ref maps an OAS 2.0 local reference to its OAS 3.x equivalent.
// References that do not use an OAS 2.0 prefix are returned unchanged.
func RewriteOAS2Ref(ref string) string {
	switch {
	case strings.HasPrefix(ref, RefPrefixDefinitions):
		return RefPrefixComponents + SectionSchemas + "/" + strings.TrimPrefix(ref, RefPrefixDefinitions)
	case strings.HasPrefix(ref, RefPrefixParameters):
		return RefPrefixComponents + SectionParameters + "/" + strings.TrimPrefix(ref, RefPrefixParameters)
	case strings.HasPrefix(ref, RefPrefixResponses):
		return RefPrefixComponents + SectionResponses + "/" + strings.TrimPrefix(ref, RefPrefixResponses)
	case strings.HasPrefix(ref, RefPrefixSecurityDefinitions):
		return RefPrefixComponents + SectionSecuritySchemes + "/" + strings.TrimPrefix(ref, RefPrefixSecurityDefinitions)
	default:
		return ref
	}
}
