package models

// TreeNode is one position in a reference tree. The same entry may appear at
// several positions; each is a distinct node.
type TreeNode struct {
	EntryID           string      `json:"entry_id"`
	Entry             *Entry      `json:"-"`
	ContentTypeID     string      `json:"content_type_id"`
	DisplayName       string      `json:"display_name"`
	InternalName      string      `json:"internal_name"`
	IsAsset           bool        `json:"is_asset,omitempty"`
	IsMorePlaceholder bool        `json:"is_more_placeholder,omitempty"`
	Children          []*TreeNode `json:"children"`
}
