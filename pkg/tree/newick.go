package tree

import (
	"regexp"
	"strconv"
	"strings"
)

// MinBranchLength replaces zero branch lengths in Newick output.
const MinBranchLength = 1e-22

// offendingChars matches runs of whitespace and characters that are either
// reserved in Newick or known to break downstream parsers.
var offendingChars = regexp.MustCompile("[\\s\"'`~:;/\\[\\]{}|<>,.!@#$%^&*()?+=\\\\]+")

// CleanName makes name safe to embed unquoted in a Newick string by
// replacing every run of offending characters with a single underscore.
func CleanName(name string) string {
	return offendingChars.ReplaceAllString(name, "_")
}

// Newick renders the subtree rooted at n. With branchLengths each child is
// suffixed with ":<length>", zero lengths written as MinBranchLength. No
// trailing semicolon is added.
func (n *Node) Newick(branchLengths bool) string {
	var sb strings.Builder
	n.writeNewick(&sb, branchLengths)
	return sb.String()
}

func (n *Node) writeNewick(sb *strings.Builder, branchLengths bool) {
	if len(n.children) > 0 {
		sb.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				sb.WriteByte(',')
			}
			c.writeNewick(sb, branchLengths)
			if branchLengths {
				bl := c.branchLength
				if bl == 0 {
					bl = MinBranchLength
				}
				sb.WriteByte(':')
				sb.WriteString(strconv.FormatFloat(bl, 'g', -1, 64))
			}
		}
		sb.WriteByte(')')
	}
	sb.WriteString(CleanName(n.name))
}
