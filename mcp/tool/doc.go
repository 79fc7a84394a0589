// Package tool registers CWL command line tools and invokes them. It holds
// the tool registry, the value coercer applied to caller requests, the
// output reader normalizing engine results and the per tool adapter exposed
// through the calling protocol and as a Fluxor action service.
package tool
