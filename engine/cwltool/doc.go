// Package cwltool implements engine.Engine on top of the cwltool reference
// runner. Every execution runs in its own output directory and the container
// runner is chosen per call.
package cwltool
