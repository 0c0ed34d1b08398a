// Package att implements the attribute database of a GATT server.
//
// A DB is an ordered table of attributes addressed by 16-bit handles.
// Services, characteristics and descriptors are not linked to each other;
// their relationships are derived from handle order. A service spans from
// its declaration to the record before the next service declaration, and a
// characteristic's descriptors follow its value until the next
// characteristic or service declaration.
//
// A DB is safe for concurrent use. Every method holds a single lock for its
// whole duration.
package att

// BaseHandle is the handle of the first attribute in a database.
// Handle 0x0000 is reserved [Vol 3, Part F, 3.2.2].
const BaseHandle = 0x0001

// MaxHandle is the largest valid attribute handle.
const MaxHandle = 0xFFFF
