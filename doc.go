// Package stralloc implements a specialized allocator for variable-length
// byte strings, backed directly by anonymous virtual-memory mappings
// obtained from the operating system rather than a general-purpose heap.
//
// Clients allocate a string of an exact byte length, receive an opaque
// Handle, read or write the underlying buffer through that handle, and
// eventually free it. The allocator also exposes introspection (LiveSize,
// FreeSize, UsedSize) and a Compact operation that defragments live
// strings and unmaps backing regions that are no longer needed.
//
// The implementation is not safe for concurrent use: all operations must
// be serialized by the caller, and Compact in particular is a global
// barrier — no other operation may run while it is in flight.
package stralloc
