// Package socket wraps a single non-blocking, broadcast capable IPv4 datagram socket.
//
// A Socket is created unbound. Bind and BindInterface each store their value
// and then rebind the socket to the combination of the port and interface known so far,
// so both calls together form one logical bind.
// They must be called before any traffic is sent or received.
// Rebinding a socket that is in use drops any datagram that is still queued.
// Rebinding is not atomic: the old descriptor is closed before the new one is bound,
// so if Bind or BindInterface fails the socket stays unbound
// until a later call binds it successfully.
//
// All operations return immediately. Receive reports an empty Result
// instead of blocking when no datagram is queued.
// Errors of the operating system are translated to a Kind exactly once in this package.
//
// A Socket must not be used from multiple goroutines at the same time.
package socket
