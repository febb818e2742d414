package service

import (
	"fmt"

	"inkwell/internal/models"
)

// authorizeOwner is the single ownership policy applied to every owned
// resource: mutation is permitted only to the resource's creator. The
// check runs before validation and before any state change.
func authorizeOwner(resource models.Owned, userID uint, action, kind string) error {
	if resource.OwnerID() != userID {
		return models.NewForbiddenError(
			fmt.Sprintf("You do not have permission to %s this %s", action, kind))
	}
	return nil
}

// lastPage computes the final page number for a paginated collection.
func lastPage(total int64, perPage int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// pageOffset converts a 1-based page number to a row offset.
func pageOffset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
