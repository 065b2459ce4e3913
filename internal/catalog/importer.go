package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/pkg/logger"
)

type Counts struct {
	Created int
	Skipped int
}

// Result summarizes an import. Skipped rows already existed; rows that
// failed validation are listed in Errors.
type Result struct {
	ProductTypes  Counts
	DeliveryTypes Counts
	Products      Counts
	Errors        []RowError
}

type Importer struct {
	productTypes  service.ProductTypeService
	deliveryTypes service.DeliveryTypeService
	products      service.ProductService
}

func NewImporter(
	productTypes service.ProductTypeService,
	deliveryTypes service.DeliveryTypeService,
	products service.ProductService,
) *Importer {
	return &Importer{
		productTypes:  productTypes,
		deliveryTypes: deliveryTypes,
		products:      products,
	}
}

// Import creates every entry of c whose name does not exist yet, compared
// case-insensitively. Product types are imported first so products can
// reference them by name.
func (i *Importer) Import(ctx context.Context, c *Catalog) (*Result, error) {
	result := &Result{}

	typeIDs, err := i.importProductTypes(ctx, c.ProductTypes, result)
	if err != nil {
		return nil, err
	}
	if err := i.importDeliveryTypes(ctx, c.DeliveryTypes, result); err != nil {
		return nil, err
	}
	if err := i.importProducts(ctx, c.Products, typeIDs, result); err != nil {
		return nil, err
	}

	logger.Info("Catalog import finished", logger.Fields{
		"product_types_created":  result.ProductTypes.Created,
		"delivery_types_created": result.DeliveryTypes.Created,
		"products_created":       result.Products.Created,
		"row_errors":             len(result.Errors),
	})
	return result, nil
}

func (i *Importer) importProductTypes(ctx context.Context, rows []NamedRow, result *Result) (map[string]uint, error) {
	existing, err := i.productTypes.GetAll(ctx, service.ListParams{})
	if err != nil {
		return nil, err
	}
	ids := make(map[string]uint, len(existing)+len(rows))
	for _, pt := range existing {
		ids[strings.ToLower(pt.Name)] = pt.ID
	}

	for _, row := range rows {
		if _, ok := ids[strings.ToLower(row.Name)]; ok {
			result.ProductTypes.Skipped++
			continue
		}
		id, err := i.productTypes.Create(ctx, &model.ProductType{Name: row.Name})
		if err != nil {
			if rowErr, ok := asRowError(SheetProductTypes, row.Row, err); ok {
				result.Errors = append(result.Errors, rowErr)
				continue
			}
			return nil, err
		}
		ids[strings.ToLower(row.Name)] = id
		result.ProductTypes.Created++
	}
	return ids, nil
}

func (i *Importer) importDeliveryTypes(ctx context.Context, rows []NamedRow, result *Result) error {
	existing, err := i.deliveryTypes.GetAll(ctx, service.ListParams{})
	if err != nil {
		return err
	}
	names := make(map[string]struct{}, len(existing))
	for _, dt := range existing {
		names[strings.ToLower(dt.Name)] = struct{}{}
	}

	for _, row := range rows {
		if _, ok := names[strings.ToLower(row.Name)]; ok {
			result.DeliveryTypes.Skipped++
			continue
		}
		if _, err := i.deliveryTypes.Create(ctx, &model.DeliveryType{Name: row.Name}); err != nil {
			if rowErr, ok := asRowError(SheetDeliveryTypes, row.Row, err); ok {
				result.Errors = append(result.Errors, rowErr)
				continue
			}
			return err
		}
		names[strings.ToLower(row.Name)] = struct{}{}
		result.DeliveryTypes.Created++
	}
	return nil
}

func (i *Importer) importProducts(ctx context.Context, rows []ProductRow, typeIDs map[string]uint, result *Result) error {
	existing, err := i.products.GetAll(ctx, service.ListParams{})
	if err != nil {
		return err
	}
	names := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		names[strings.ToLower(p.Name)] = struct{}{}
	}

	for _, row := range rows {
		if _, ok := names[strings.ToLower(row.Name)]; ok {
			result.Products.Skipped++
			continue
		}

		product := &model.Product{
			Name:         row.Name,
			Description:  row.Description,
			Price:        row.Price,
			Stock:        row.Stock,
			ProductTypes: []model.ProductType{},
		}
		var unknown []string
		for _, name := range row.Types {
			id, ok := typeIDs[strings.ToLower(name)]
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			product.ProductTypes = append(product.ProductTypes, model.ProductType{ID: id})
		}
		if len(unknown) > 0 {
			result.Errors = append(result.Errors, RowError{
				Sheet: SheetProducts,
				Row:   row.Row,
				Err:   fmt.Errorf("unknown product types: %s", strings.Join(unknown, ", ")),
			})
			continue
		}

		if _, err := i.products.Create(ctx, product); err != nil {
			if rowErr, ok := asRowError(SheetProducts, row.Row, err); ok {
				result.Errors = append(result.Errors, rowErr)
				continue
			}
			return err
		}
		names[strings.ToLower(row.Name)] = struct{}{}
		result.Products.Created++
	}
	return nil
}

// asRowError keeps validation failures local to their row; anything else
// aborts the import
func asRowError(sheet string, row int, err error) (RowError, bool) {
	var notCreated *service.NotCreatedError
	if !errors.As(err, &notCreated) {
		return RowError{}, false
	}
	return RowError{Sheet: sheet, Row: row, Err: err}, true
}
