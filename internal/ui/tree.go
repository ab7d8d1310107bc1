package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// treeNode represents a node in the file tree
type treeNode struct {
	name     string
	isFile   bool
	children map[string]*treeNode
}

// PrintFilesTree prints paths grouped by directory.
func PrintFilesTree(w io.Writer, header string, files []string) {
	if len(files) == 0 {
		return
	}

	_, _ = fmt.Fprintf(w, "\n%s\n", header)
	printTree(w, buildFileTree(files), "", true)
}

func buildFileTree(files []string) *treeNode {
	root := &treeNode{
		children: make(map[string]*treeNode),
	}

	for _, path := range files {
		parts := strings.Split(path, "/")
		current := root

		for i, part := range parts {
			if current.children[part] == nil {
				current.children[part] = &treeNode{
					name:     part,
					isFile:   i == len(parts)-1,
					children: make(map[string]*treeNode),
				}
			}
			current = current.children[part]
		}
	}
	return root
}

func printTree(w io.Writer, node *treeNode, prefix string, isLast bool) {
	if node.name != "" {
		connector := "├── "
		if isLast {
			connector = "└── "
		}

		name := node.name
		if !node.isFile {
			name = Info.Sprint(name + "/")
		}

		_, _ = fmt.Fprintf(w, "%s%s%s\n", prefix, connector, name)
	}

	childPrefix := prefix
	if node.name != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	}

	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sortFileTree(keys, node.children)

	for i, key := range keys {
		printTree(w, node.children[key], childPrefix, i == len(keys)-1)
	}
}

// sortFileTree sorts the keys: directories first, then files
func sortFileTree(keys []string, nodes map[string]*treeNode) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := nodes[keys[i]], nodes[keys[j]]
		if a.isFile != b.isFile {
			return !a.isFile
		}
		return keys[i] < keys[j]
	})
}
