package orders

// PartitionKey keys order events by order number so one order's events stay ordered.
func PartitionKey(orderNumber string) []byte { return []byte(orderNumber) }
