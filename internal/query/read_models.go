package query

// Re-export read models from readmodel package for backward compatibility
import "github.com/tranphihao2k3/LapLap-sub001/internal/readmodel"

type ProductReadModel = readmodel.ProductReadModel
type OrderItemReadModel = readmodel.OrderItemReadModel
type OrderReadModel = readmodel.OrderReadModel
type PostReadModel = readmodel.PostReadModel
