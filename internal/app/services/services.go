// Package services holds the application logic between the HTTP controllers and the
// repositories:
//   - CatalogService: serves reference data from an immutable, periodically reloaded snapshot
//   - PlanService: computes and caches course plans for students
//   - StudentService: reads and replaces student records, invalidating their cached plans
package services
