package domain

// KeyPrefix namespaces every key searchd touches in the shared store.
const KeyPrefix = "searchd:"
