// Package api serves verification, insertion and canvas storage over HTTP.
//
// Routes:
//
//	POST   /v1/verify                  verify a canvas snapshot
//	POST   /v1/insert                  insert a label into a verified canvas
//	GET    /v1/canvases                list stored canvases
//	POST   /v1/canvases                store a new canvas
//	GET    /v1/canvases/{id}           fetch a stored canvas
//	PUT    /v1/canvases/{id}           replace a stored canvas
//	DELETE /v1/canvases/{id}           delete a stored canvas
//	POST   /v1/canvases/{id}/verify    verify a stored canvas at its root
//	GET    /v1/canvases/{id}/render    render a stored canvas as SVG or DOT
//
// Snapshots in request and response bodies use the JSON layout of
// [github.com/matzehuels/rbcheck/pkg/io]. Errors are answered with the
// status from [errs.HTTPStatus] and a body of the form
//
//	{"code": "INVALID_LABEL", "error": "label must be an integer"}
//
// Verification outcomes are not errors: /v1/verify answers 200 with the
// reason and flags even when the canvas is not a valid tree. /v1/insert
// answers 422 when the canvas does not verify and 409 on a duplicate label.
//
// [errs.HTTPStatus]: github.com/matzehuels/rbcheck/pkg/errors.HTTPStatus
package api
