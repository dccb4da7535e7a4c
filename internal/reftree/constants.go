package reftree

const (
	// MaxLevel is the depth at which children are replaced by a placeholder.
	MaxLevel = 10
	// MorePlaceholder is the display name of the depth-cap placeholder.
	MorePlaceholder = "+ more"
	// DefaultLocale is read first when deriving internal names.
	DefaultLocale = "en-US"
	// PathDelimiter joins entry ids into node paths.
	PathDelimiter = ":"

	placeholderPrefix = "more-"
)

// CommonNameFields are tried in order when deriving an internal name.
var CommonNameFields = []string{
	"internalName",
	"name",
	"title",
	"entryTitle",
	"heading",
	"label",
}

// AssetContentTypes are content type ids (lower case) treated as assets.
var AssetContentTypes = []string{
	"asset",
	"image",
	"media",
	"file",
	"video",
}
