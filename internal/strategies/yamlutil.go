package strategies

import "gopkg.in/yaml.v3"

// yamlPair is one key/value entry of a YAML mapping, in document order.
type yamlPair struct {
	Key   string
	Value *yaml.Node
}

// yamlRoot unwraps a document node to its top-level mapping, or nil.
func yamlRoot(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil
	}
	return n
}

// yamlPairs returns the entries of a mapping node. Non-mappings yield nil.
func yamlPairs(n *yaml.Node) []yamlPair {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	pairs := make([]yamlPair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, yamlPair{Key: n.Content[i].Value, Value: n.Content[i+1]})
	}
	return pairs
}

// yamlLookup returns the value stored under key in a mapping node, or nil.
func yamlLookup(n *yaml.Node, key string) *yaml.Node {
	for _, p := range yamlPairs(n) {
		if p.Key == key {
			return p.Value
		}
	}
	return nil
}

// yamlScalar returns the scalar text of a node, or "".
func yamlScalar(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}
