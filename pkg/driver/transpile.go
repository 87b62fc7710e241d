package driver

import "strings"

// Transpile runs the whole pipeline over one source text: tokenize,
// resolve adjacency, synthesize and validate nodes, then join their
// serializations with newlines. Serialization goes through the
// registry so repeated node instances hit its cache.
func (d *Driver) Transpile(text string) (string, error) {
	stream := d.Nodes(text)

	var parts []string
	for {
		node, err := stream.Next()
		if err != nil {
			return "", err
		}
		if node == nil {
			break
		}
		out, err := d.reg.Resolve(node, false)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n"), nil
}
