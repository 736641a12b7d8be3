package repositories

import (
	"database/sql"
	"fmt"
)

const defaultPageSize = 15

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// pageOffset нормализует номер страницы и возвращает limit/offset.
func pageOffset(page int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	return defaultPageSize, (page - 1) * defaultPageSize
}
