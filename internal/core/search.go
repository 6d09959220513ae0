package core

import "strings"

// SearchCustomers returns the customers whose first or last name contains
// query, case-insensitively. The query is used as typed, spaces included.
// An empty query performs no search. Matches keep their source order.
func SearchCustomers(customers []Customer, query string) SearchResult {
	result := SearchResult{Query: query}
	if query == "" {
		return result
	}
	needle := strings.ToLower(query)
	result.Performed = true

	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.FirstName), needle) ||
			strings.Contains(strings.ToLower(c.LastName), needle) {
			result.Customers = append(result.Customers, c)
		}
	}
	return result
}

// Found returns the number of matched customers.
func (r SearchResult) Found() int {
	return len(r.Customers)
}
