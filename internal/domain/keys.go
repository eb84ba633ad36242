package domain

// KeyPrefix namespaces every archmap key in the remote store.
const KeyPrefix = "archmap:"
