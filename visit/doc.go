// Package visit walks document trees, dispatching typed callbacks for
// each node kind. Callbacks signal structural edits through sentinel
// errors: removal is collected during the walk and applied once the
// parent's children have all been visited, so sibling indices stay
// stable while a walk is in progress.
package visit
