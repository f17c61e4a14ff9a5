// Package journal records attachment activity of a hosting session in the
// optional relational database.
//
// Every wear, tracker attach and leave is stored as one row keyed by session
// id, so an operator can reconstruct who wore what after the fact. Writes are
// best effort: a nil *Journal accepts every call and does nothing.
package journal
