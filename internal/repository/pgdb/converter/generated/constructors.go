package generated

import "github.com/DRSN-tech/inventory-backend/internal/repository/pgdb/converter"

func NewProductConverterImpl() converter.ProductConverter {
	return &ProductConverterImpl{}
}

func NewCategoryConverterImpl() converter.CategoryConverter {
	return &CategoryConverterImpl{}
}

func NewOutboxEventConverterImpl() converter.OutboxEventConverter {
	return &OutboxEventConverterImpl{}
}
