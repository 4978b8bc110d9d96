package analyzer

// OpenAPI feature keys.
const (
	FeatureAdditionalProperties = "additionalProperties"
	FeatureCallbacks            = "callbacks"
	FeatureCircularRefs         = "circularRefs"
	FeatureCommonParameters     = "commonParameters"
	FeatureDiscriminators       = "discriminators"
	FeatureLinks                = "links"
	FeaturePolymorphism         = "polymorphism"
	FeatureServerVariables      = "serverVariables"
	FeatureStyle                = "style"
	FeatureWebhooks             = "webhooks"
	FeatureXML                  = "xml"
)

// Platform extension keys.
const (
	ExtensionDefault          = "x-default"
	ExtensionCodeSamples      = "x-readme.code-samples"
	ExtensionExplorerEnabled  = "x-readme.explorer-enabled"
	ExtensionHeaders          = "x-readme.headers"
	ExtensionProxyEnabled     = "x-readme.proxy-enabled"
	ExtensionSamplesLanguages = "x-readme.samples-languages"
	ExtensionReadmeRefName    = "x-readme-ref-name"
)

const (
	readmeExtension = "x-readme"

	readmeDocs                 = "https://docs.readme.com/main/docs/openapi-extensions"
	openAPI30Spec              = "https://spec.openapis.org/oas/v3.0.3"
	openAPI31Spec              = "https://spec.openapis.org/oas/v3.1.0"
	jsonSchemaObjectReference  = "https://json-schema.org/understanding-json-schema/reference/object"
	jsonSchemaCompositionGuide = "https://json-schema.org/understanding-json-schema/reference/combining"
)

// ReadMeKey is the catch-all feature key that stands for every platform
// extension.
const ReadMeKey = "readme"

// catalogEntry describes one feature the analyzer knows about.
type catalogEntry struct {
	key         string
	description string
	docs        DocsURL
}

// openAPICatalog lists the OpenAPI features in report order.
var openAPICatalog = []catalogEntry{
	{
		key:         FeatureAdditionalProperties,
		description: "additionalProperties allows you to document dictionaries where the keys are user-supplied strings.",
		docs:        DocsURL{URL: jsonSchemaObjectReference + "#additionalproperties"},
	},
	{
		key:         FeatureCallbacks,
		description: "Callbacks are asynchronous, out-of-band requests that your service will send to some other service in response to specific events.",
		docs:        specDocs("#callback-object"),
	},
	{
		key:         FeatureCircularRefs,
		description: "Circular references are $ref pointers that at some point in their lineage reference themselves.",
	},
	{
		key:         FeatureCommonParameters,
		description: "Common parameters allow you to define parameters that share the same path, or are shared by every operation on a path.",
		docs:        specDocs("#path-item-object"),
	},
	{
		key:         FeatureDiscriminators,
		description: "With schemas that can be, or contain, different shapes, discriminators help your users identify the shape they can supply or receive.",
		docs:        specDocs("#discriminator-object"),
	},
	{
		key:         FeatureLinks,
		description: "Links allow you to define at call-time relationships to other operations within your API.",
		docs:        specDocs("#link-object"),
	},
	{
		key:         FeaturePolymorphism,
		description: "Polymorphism (allOf, anyOf, oneOf) allows you to describe schemas that may accept multiple different shapes.",
		docs:        DocsURL{URL: jsonSchemaCompositionGuide},
	},
	{
		key:         FeatureServerVariables,
		description: "Server variables allow you to do user-supplied variable substitutions within your API server URL.",
		docs:        specDocs("#server-variable-object"),
	},
	{
		key:         FeatureStyle,
		description: "Parameter serialization (style) allows you to describe how the parameter should be sent to your API.",
		docs:        specDocs("#style-values"),
	},
	{
		key:         FeatureWebhooks,
		description: "Webhooks allow you to describe out of band requests that may be initiated by your users.",
		docs:        DocsURL{Versions: map[string]string{"3.1": openAPI31Spec + "#oas-webhooks"}},
	},
	{
		key:         FeatureXML,
		description: "Any XML object allows you to describe how a schema should be represented with XML.",
		docs:        specDocs("#xml-object"),
	},
}

// platformCatalog lists the ReadMe extensions in report order.
var platformCatalog = []catalogEntry{
	{
		key:         ExtensionDefault,
		description: "The x-default extension allows you to define static authentication credential defaults for OAuth 2 and API Key security types.",
		docs:        DocsURL{URL: readmeDocs + "#authentication-defaults"},
	},
	{
		key:         ExtensionCodeSamples,
		description: "The x-readme.code-samples extension allows you to document custom code samples for your API operations.",
		docs:        DocsURL{URL: readmeDocs + "#custom-code-samples"},
	},
	{
		key:         ExtensionExplorerEnabled,
		description: "The x-readme.explorer-enabled extension allows you to toggle your API reference's Try It button.",
		docs:        DocsURL{URL: readmeDocs + "#disable-the-api-explorer"},
	},
	{
		key:         ExtensionHeaders,
		description: "The x-readme.headers extension allows you to add static headers to every request made from the API explorer.",
		docs:        DocsURL{URL: readmeDocs + "#static-headers"},
	},
	{
		key:         ExtensionProxyEnabled,
		description: "The x-readme.proxy-enabled extension allows you to toggle whether requests are sent through the ReadMe proxy.",
		docs:        DocsURL{URL: readmeDocs + "#cors-proxy-enabled"},
	},
	{
		key:         ExtensionSamplesLanguages,
		description: "The x-readme.samples-languages extension allows you to toggle which languages are shown in code samples.",
		docs:        DocsURL{URL: readmeDocs + "#code-sample-languages"},
	},
	{
		key:         ExtensionReadmeRefName,
		description: "The x-readme-ref-name extension allows you to name schemas in the API reference when they are dereferenced.",
		docs:        DocsURL{URL: readmeDocs + "#readme-ref-name"},
	},
}

// readmeSubKeys maps keys of the x-readme object to catalog keys.
var readmeSubKeys = map[string]string{
	"code-samples":      ExtensionCodeSamples,
	"explorer-enabled":  ExtensionExplorerEnabled,
	"headers":           ExtensionHeaders,
	"proxy-enabled":     ExtensionProxyEnabled,
	"samples-languages": ExtensionSamplesLanguages,
}

// legacyExtensions maps the older top-level spellings to catalog keys.
var legacyExtensions = map[string]string{
	"x-code-samples":      ExtensionCodeSamples,
	"x-explorer-enabled":  ExtensionExplorerEnabled,
	"x-headers":           ExtensionHeaders,
	"x-proxy-enabled":     ExtensionProxyEnabled,
	"x-samples-languages": ExtensionSamplesLanguages,
}

func specDocs(anchor string) DocsURL {
	return DocsURL{Versions: map[string]string{
		"3.0": openAPI30Spec + anchor,
		"3.1": openAPI31Spec + anchor,
	}}
}

// OpenAPIFeatureKeys returns the OpenAPI feature keys in catalog order.
func OpenAPIFeatureKeys() []string {
	return catalogKeys(openAPICatalog)
}

// PlatformFeatureKeys returns the platform extension keys in catalog order.
func PlatformFeatureKeys() []string {
	return catalogKeys(platformCatalog)
}

func catalogKeys(entries []catalogEntry) []string {
	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.key
	}
	return keys
}
