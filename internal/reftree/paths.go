package reftree

import (
	"slices"
	"strings"

	"github.com/pders01/skuref/internal/models"
)

// JoinPath appends entryID to parent. An empty parent yields entryID.
func JoinPath(parent, entryID string) string {
	if parent == "" {
		return entryID
	}
	return parent + PathDelimiter + entryID
}

// SplitPath returns the entry ids of a path, root first.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, PathDelimiter)
}

// LastID returns the entry id a path ends in.
func LastID(path string) string {
	if i := strings.LastIndex(path, PathDelimiter); i >= 0 {
		return path[i+len(PathDelimiter):]
	}
	return path
}

// AncestorPaths returns every strict prefix of path, nearest ancestor first.
func AncestorPaths(path string) []string {
	parts := SplitPath(path)
	var out []string
	for i := len(parts) - 1; i > 0; i-- {
		out = append(out, strings.Join(parts[:i], PathDelimiter))
	}
	return out
}

// IsDescendantPath reports whether path lies strictly under ancestor.
func IsDescendantPath(path, ancestor string) bool {
	return strings.HasPrefix(path, ancestor+PathDelimiter)
}

// FindNode returns the first node with entryID in depth-first order.
func FindNode(node *models.TreeNode, entryID string) *models.TreeNode {
	if node == nil {
		return nil
	}
	if node.EntryID == entryID {
		return node
	}
	for _, child := range node.Children {
		if found := FindNode(child, entryID); found != nil {
			return found
		}
	}
	return nil
}

// NodeAt resolves a path against the tree, or returns nil if no node sits
// at that position.
func NodeAt(root *models.TreeNode, path string) *models.TreeNode {
	parts := SplitPath(path)
	if root == nil || len(parts) == 0 || parts[0] != root.EntryID {
		return nil
	}
	node := root
	for _, id := range parts[1:] {
		var next *models.TreeNode
		for _, child := range node.Children {
			if child.EntryID == id {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

// CollectAllNodeIDs returns the distinct entry ids in the tree, sorted.
func CollectAllNodeIDs(node *models.TreeNode) []string {
	ids := make(map[string]struct{})
	walkNodes(node, func(n *models.TreeNode) { ids[n.EntryID] = struct{}{} })
	return sortedSet(ids)
}

// CollectDescendantIDs returns the distinct entry ids below node, sorted.
func CollectDescendantIDs(node *models.TreeNode) []string {
	ids := make(map[string]struct{})
	if node != nil {
		for _, child := range node.Children {
			walkNodes(child, func(n *models.TreeNode) { ids[n.EntryID] = struct{}{} })
		}
	}
	return sortedSet(ids)
}

// FindParentIDs returns the ancestor ids of the first occurrence of
// entryID, root first. It returns nil when entryID is the root or absent.
func FindParentIDs(node *models.TreeNode, entryID string) []string {
	var find func(n *models.TreeNode, chain []string) []string
	find = func(n *models.TreeNode, chain []string) []string {
		if n.EntryID == entryID {
			return chain
		}
		chain = append(slices.Clip(chain), n.EntryID)
		for _, child := range n.Children {
			if found := find(child, chain); len(found) > 0 {
				return found
			}
		}
		return nil
	}
	if node == nil {
		return nil
	}
	return find(node, nil)
}

// CollectAllNodePaths returns the path of every position in the tree in
// depth-first order.
func CollectAllNodePaths(node *models.TreeNode) []string {
	var paths []string
	walkPaths(node, "", func(path string, _ *models.TreeNode) bool {
		paths = append(paths, path)
		return true
	})
	return paths
}

// CollectDisabledPaths returns every path whose node, or any ancestor on
// the same branch, has a blocked content type.
func CollectDisabledPaths(node *models.TreeNode, blocked []string) map[string]struct{} {
	disabled := make(map[string]struct{})
	if node == nil || len(blocked) == 0 {
		return disabled
	}

	var visit func(n *models.TreeNode, parent string, inherited bool)
	visit = func(n *models.TreeNode, parent string, inherited bool) {
		path := JoinPath(parent, n.EntryID)
		isDisabled := inherited || slices.Contains(blocked, n.ContentTypeID)
		if isDisabled {
			disabled[path] = struct{}{}
		}
		for _, child := range n.Children {
			visit(child, path, isDisabled)
		}
	}
	visit(node, "", false)
	return disabled
}

// Stats summarises a tree.
type Stats struct {
	Positions    int            `json:"positions"`
	UniqueIDs    int            `json:"unique_ids"`
	Depth        int            `json:"depth"`
	Assets       int            `json:"assets"`
	Placeholders int            `json:"placeholders"`
	ContentTypes map[string]int `json:"content_types"`
}

// Summarize counts positions, distinct entries and content types.
func Summarize(root *models.TreeNode) Stats {
	s := Stats{ContentTypes: make(map[string]int)}
	ids := make(map[string]struct{})

	walkPaths(root, "", func(path string, n *models.TreeNode) bool {
		s.Positions++
		if depth := len(SplitPath(path)); depth > s.Depth {
			s.Depth = depth
		}
		if n.IsMorePlaceholder {
			s.Placeholders++
			return true
		}
		ids[n.EntryID] = struct{}{}
		if n.IsAsset {
			s.Assets++
		}
		s.ContentTypes[n.ContentTypeID]++
		return true
	})
	s.UniqueIDs = len(ids)
	return s
}

func walkNodes(node *models.TreeNode, fn func(*models.TreeNode)) {
	if node == nil {
		return
	}
	fn(node)
	for _, child := range node.Children {
		walkNodes(child, fn)
	}
}

// walkPaths visits nodes depth-first with their paths. Returning false from
// fn skips the node's children.
func walkPaths(node *models.TreeNode, parent string, fn func(path string, n *models.TreeNode) bool) {
	if node == nil {
		return
	}
	path := JoinPath(parent, node.EntryID)
	if !fn(path, node) {
		return
	}
	for _, child := range node.Children {
		walkPaths(child, path, fn)
	}
}

// WalkPaths exposes the depth-first path walk to renderers.
func WalkPaths(root *models.TreeNode, fn func(path string, n *models.TreeNode) bool) {
	walkPaths(root, "", fn)
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
