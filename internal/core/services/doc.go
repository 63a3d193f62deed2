// Package services implements the driving port interfaces.
//
// List services return lazy sequences: nothing is sent until the caller
// ranges over the result, and each page is requested only after the
// previous one has been consumed. Every response passes its users and
// chats to the PeerService so later calls can address them.
package services
