package seeder

// Defaults are the demo seeders, in dependency order.
func Defaults() []Seeder {
	return []Seeder{
		DemoUsersSeeder{},
		DemoJobsSeeder{},
	}
}
