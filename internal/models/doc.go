// Package models defines the core domain models for the gift exchange.
//
// # Models
//
//   - Group: one independent exchange with its own budget and roster
//   - Participant: a member of a group, identified by username
//   - Assignment: the giver -> recipient mapping computed once per group
//   - WishItem: a single entry on a participant's wish list
//
// Groups and participants come entirely from operator configuration and are
// immutable at runtime; assignments and wishes live in the store.
//
// # Design Principles
//
// 1. **Config is the source of truth for people**: the store never holds
// display names or credentials, only usernames.
// 2. **Wishes belong to people, not groups**: a person can be in several
// groups and keeps one wish list across all of them.
// 3. **Avoid circular references**: relationships use username strings
// instead of pointers.
package models
