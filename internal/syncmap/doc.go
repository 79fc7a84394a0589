// Package syncmap offers a small generic map guarded by a sync.RWMutex. The
// tool registry uses it to hold records that are read far more often than
// they are replaced.
package syncmap
