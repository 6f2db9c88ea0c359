package domain

// CatalogRecord is a course as published in the course catalog, with the
// fields that only the catalog carries.
type CatalogRecord struct {
	Course
	Department    string
	Prerequisites string
}
