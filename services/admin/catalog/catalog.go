// Package catalog declares the resources of the brille admin backend. The
// declarations drive route registration, validation schemas, partial
// updates and the relation layout; adding a resource here is all it takes
// to expose it.
package catalog

import (
	"github.com/brille-tech/backend/core/rest"
)

// Resources returns the declarative catalog of all admin resources.
func Resources() []rest.Resource {
	return []rest.Resource{
		{
			Name:     "users",
			Singular: "user",
			Table:    "users",
			Fields: []rest.Field{
				{Name: "firstname", Type: rest.FieldString, Required: true, Max: 255},
				{Name: "lastname", Type: rest.FieldString, Required: true, Max: 255},
				{Name: "email", Type: rest.FieldString, Required: true, Max: 255},
				{Name: "password", Type: rest.FieldString, Required: true, Max: 255},
				{Name: "admin", Type: rest.FieldBoolean},
			},
			Children: []rest.Child{
				{Resource: "addresses", ForeignKey: "idUser", AllowClear: true},
			},
		},
		{
			Name:     "addresses",
			Singular: "address",
			Table:    "addresses",
			Fields: []rest.Field{
				{Name: "idUser", Type: rest.FieldInteger, Required: true},
				{Name: "street", Type: rest.FieldString, Required: true, Max: 255},
				{Name: "zipcode", Type: rest.FieldString, Required: true, Max: 10},
				{Name: "city", Type: rest.FieldString, Required: true, Max: 100},
				{Name: "country", Type: rest.FieldString, Max: 100},
			},
		},
		{
			Name:     "products",
			Singular: "product",
			Table:    "products",
			Fields: []rest.Field{
				{Name: "name", Type: rest.FieldString, Required: true, Max: 255},
				{Name: "description", Type: rest.FieldString},
				{Name: "price", Type: rest.FieldInteger, Required: true},
				{Name: "idColor", Type: rest.FieldInteger, Nullable: true},
			},
		},
		{
			Name:     "orders",
			Singular: "order",
			Table:    "orders",
			Fields: []rest.Field{
				{Name: "idUser", Type: rest.FieldInteger, Required: true, Nullable: true},
				{Name: "idStatus", Type: rest.FieldInteger, Required: true, Nullable: true},
				{Name: "idAddress", Type: rest.FieldInteger},
				{Name: "orderDate", Type: rest.FieldDate},
				{Name: "orderTrackingNum", Type: rest.FieldInteger, Required: true, Nullable: true},
			},
		},
		{
			Name:     "productorders",
			Singular: "productorder",
			Table:    "productorders",
			Fields: []rest.Field{
				{Name: "idProduct", Type: rest.FieldInteger, Required: true, Max: 255},
				{Name: "idOrder", Type: rest.FieldInteger, Required: true, Max: 255},
				{Name: "quantity", Type: rest.FieldInteger, Required: true, Max: 200},
			},
		},
		{
			Name:     "status",
			Singular: "status",
			Table:    "status",
			Fields: []rest.Field{
				{Name: "name", Type: rest.FieldString, Required: true, Max: 100},
			},
		},
		{
			Name:     "pages",
			Singular: "page",
			Table:    "pages",
			Fields: []rest.Field{
				{Name: "title", Type: rest.FieldString, Required: true, Max: 255},
				{Name: "slug", Type: rest.FieldString, Required: true, Max: 255},
			},
			Children: []rest.Child{
				{Resource: "paragraphs", ForeignKey: "idPage"},
				{Resource: "images", ForeignKey: "idPage"},
			},
		},
		{
			Name:     "paragraphs",
			Singular: "paragraph",
			Table:    "paragraphs",
			Fields: []rest.Field{
				{Name: "idPage", Type: rest.FieldInteger, Required: true},
				{Name: "title", Type: rest.FieldString, Max: 255},
				{Name: "text", Type: rest.FieldString, Required: true},
			},
		},
		{
			Name:     "images",
			Singular: "image",
			Table:    "images",
			Fields: []rest.Field{
				{Name: "idPage", Type: rest.FieldInteger, Nullable: true},
				{Name: "url", Type: rest.FieldString, Required: true, Max: 255},
				{Name: "alt", Type: rest.FieldString, Max: 255},
			},
		},
		{
			Name:     "colors",
			Singular: "color",
			Table:    "colors",
			Fields: []rest.Field{
				{Name: "name", Type: rest.FieldString, Required: true, Max: 100},
				{Name: "hex", Type: rest.FieldString, Max: 7},
			},
		},
		{
			Name:     "newsletters",
			Singular: "newsletter",
			Table:    "newsletters",
			Fields: []rest.Field{
				{Name: "email", Type: rest.FieldString, Required: true, Max: 255},
			},
		},
	}
}
