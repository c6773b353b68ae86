package core

// GroupByOrder partitions the filtered sequence into orders. Orders appear
// in first-seen sequence and each order's lines keep their source sequence,
// because the output tables and the allocator both depend on original order,
// not alphabetical or map iteration order. Grouping is by exact order id
// equality; the normalizer already stripped surrounding whitespace.
func GroupByOrder(items []LineItem) []Order {
	index := make(map[string]int, len(items))
	orders := make([]Order, 0, len(items))

	for _, item := range items {
		i, seen := index[item.OrderID]
		if !seen {
			i = len(orders)
			index[item.OrderID] = i
			orders = append(orders, Order{ID: item.OrderID})
		}
		orders[i].Lines = append(orders[i].Lines, item)
	}
	return orders
}
