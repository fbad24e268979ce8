package postgres

import (
	"fmt"
	"strings"

	"catalog-service/internal/core/domain"
)

const listingColumns = `id, title, description, price, location, type, property_type,
	beds, baths, sqft, image, status, owner_id, created_at, updated_at`

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argID      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{argID: 1}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argID))
	qb.args = append(qb.args, arg)
	qb.argID++
}

func (qb *queryBuilder) build() (string, []interface{}) {
	if len(qb.conditions) == 0 {
		return "", qb.args
	}
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// selectListingsQuery строит выборку каталога. Фильтрация по критериям
// поиска здесь не делается, это задача движка запросов; база отдает
// только объявления с нужными статусами и, если задан, один ID.
func selectListingsQuery(statuses []domain.ListingStatus, id string) (string, []interface{}) {
	qb := newQueryBuilder()

	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		qb.addCondition("%s = ANY($%d)", "status", values)
	}
	if id != "" {
		qb.addCondition("%s = $%d", "id", id)
	}

	where, args := qb.build()
	query := "SELECT " + listingColumns + " FROM properties"
	if where != "" {
		query += " " + where
	}
	query += " ORDER BY created_at DESC, id"
	return query, args
}
