package redisx

import "fmt"

const (
	// Product document: product:{id} -> {"id":..., "name":..., "description":..., "price":...}
	KeyProduct = "product:%s"

	// Creation-ordered index of product ids: zset products, score = created_at unix nanos
	KeyProductIndex = "products"
)

func ProductKey(id string) string { return fmt.Sprintf(KeyProduct, id) }
