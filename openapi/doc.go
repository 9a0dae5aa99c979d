// Package openapi loads, inspects and serializes OpenAPI documents
// (Swagger 2.0 and OpenAPI 3.x) without losing their shape.
//
// Documents are kept as an ordered yaml.Node tree. JSON sources are read
// into the same tree, so both formats preserve key order and every field,
// including ones this package has no type for. Typed views (DocumentSpec,
// PathItemSpec, OperationSpec) are decoded on demand for code that needs to
// reason about parameters or servers.
//
// See: https://spec.openapis.org/oas/v3.1.0
// See: https://swagger.io/specification/v2/
//
// # Loading
//
// The parser is chosen by file extension: ".yml" and ".yaml" are parsed as
// YAML, anything else as JSON:
//
//	doc, err := openapi.Load("petstore.yaml")
//	if err != nil {
//	    return err
//	}
//
// # Walking Operations
//
// Paths and methods are visited in document order. YAML merge keys ("<<")
// and aliases are followed, so inherited operations are visited too. Keys
// under a path item that are not HTTP methods (parameters, servers, x-*)
// are skipped:
//
//	paths, ok := doc.Paths()
//	if !ok {
//	    return errors.New("document has no paths")
//	}
//	for _, item := range paths.Items() {
//	    for _, op := range item.Operations() {
//	        fmt.Println(op.HTTPMethod(), item.Path)
//	    }
//	}
//
// # Code Samples
//
// Operation exposes the x-code-samples vendor extension positionally:
// InitCodeSamples creates the field when missing or null, PutSample writes
// only into a free position and never reorders or replaces existing entries.
// Writes copy any node the operation shares through an alias or merge key,
// so anchors keep their original content.
//
// # Serialization
//
// JSON and YAML keep document order. Fingerprint hashes the compact JSON
// encoding, so it is deterministic and sensitive to key order:
//
//	data, err := doc.JSON()
//	sum, err := doc.Fingerprint()
//
// # Serving
//
// Handler serves a document as JSON, YAML and an interactive docs page
// (Redoc by default, which renders x-code-samples). Update swaps the served
// revision atomically:
//
//	r := mux.NewRouter()
//	h := openapi.NewHandler(r, &openapi.HandleConfig{BasePath: "/docs"})
//	if err := h.Update(doc); err != nil {
//	    return err
//	}
//	http.ListenAndServe(":8080", r)
package openapi
