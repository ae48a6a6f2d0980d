// Package domain contains the core business entities of the task tracker:
// tasks (user-entered and generated distractions), priorities, and users.
// It is independent of any storage, transport, or AI provider.
package domain
