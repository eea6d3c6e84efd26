package tree

// association is one entry of a node's property bag.
type association struct {
	key   string
	value any
}

// SetAssociation stores value under key, replacing any previous value.
// Keys are unique per node.
func (n *Node) SetAssociation(key string, value any) {
	for i := range n.assoc {
		if n.assoc[i].key == key {
			n.assoc[i].value = value
			return
		}
	}
	n.assoc = append(n.assoc, association{key: key, value: value})
}

// Association returns the value stored under key.
func (n *Node) Association(key string) (any, bool) {
	for _, a := range n.assoc {
		if a.key == key {
			return a.value, true
		}
	}
	return nil, false
}

// AssociationKeys returns the bag's keys in first-insertion order.
func (n *Node) AssociationKeys() []string {
	keys := make([]string, len(n.assoc))
	for i, a := range n.assoc {
		keys[i] = a.key
	}
	return keys
}

// DeleteAssociation removes key from the bag and reports whether it was
// present.
func (n *Node) DeleteAssociation(key string) bool {
	for i, a := range n.assoc {
		if a.key == key {
			n.assoc = append(n.assoc[:i], n.assoc[i+1:]...)
			return true
		}
	}
	return false
}

// AssociationAs returns the value under key asserted to T. ok is false when
// the key is absent or holds a value of another type.
func AssociationAs[T any](n *Node, key string) (T, bool) {
	var zero T
	v, ok := n.Association(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
