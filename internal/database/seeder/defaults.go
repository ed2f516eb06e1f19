package seeder

// DemoPassword is the password of every seeded account.
const DemoPassword = "password123"

func Defaults() []Seeder {
	return []Seeder{
		RecruiterSeeder{},
		StudentsSeeder{},
	}
}
