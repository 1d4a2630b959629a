// Package seed holds the built-in starting catalog. The merged event view
// always begins from this list; remote records override entries sharing an
// ID and append otherwise.
package seed

import "github.com/ArnavTheExploit/EventSphere/internal/core/domain"

// Events returns a fresh copy of the seed catalog in its fixed order.
func Events() []domain.Event {
	out := make([]domain.Event, len(catalog))
	copy(out, catalog)
	return out
}

var catalog = []domain.Event{
	{
		ID:               "ev1",
		Title:            "CodeStorm 2026 Hackathon",
		Category:         domain.CategoryHackathons,
		Date:             "2026-02-10",
		Time:             "09:00 AM – 09:00 PM",
		Location:         "Auditorium A, Tech Campus",
		OrganizerName:    "Dev Club",
		OrganizerContact: "devclub@example.com",
		Description:      "A 12-hour coding marathon where teams build innovative solutions.",
		PosterURL:        "/events/hackathon_poster.png",
		ImageURL:         "/events/hackathon_poster.png",
		Prizes:           "1st Place: $3000, 2nd Place: $1500, 3rd Place: $500",
		RegistrationFee:  "Free",
		TeamSize:         "2-4 members",
		CreatedByUID:     "organizer-demo-1",
	},
	{
		ID:               "ev2",
		Title:            "Canvas Chronicles – Art Competition",
		Category:         domain.CategoryArtCompetitions,
		Date:             "2026-02-15",
		Time:             "11:00 AM – 02:00 PM",
		Location:         "Design Studio, Block C",
		OrganizerName:    "Fine Arts Society",
		OrganizerContact: "arts@example.com",
		Description:      "Showcase your creativity across painting, sketching, and digital illustration.",
		AboutEvent:       "Join us for a day of artistic expression. This year's theme is 'FutureScapes'. We provide the canvas, you provide the vision. Categories include Oil Painting, Watercolor, and Digital Art.",
		PosterURL:        "/events/art_poster.png",
		ImageURL:         "/events/art_poster.png",
		Prizes:           "Best in Show: Art Supply Kit ($200 value)",
		RegistrationFee:  "$10",
		TeamSize:         "Individual",
		CreatedByUID:     "organizer-demo-2",
	},
	{
		ID:               "ev3",
		Title:            "RhythmVerse – Dance & Music Night",
		Category:         domain.CategoryDanceMusic,
		Date:             "2026-02-18",
		Time:             "06:00 PM – 10:00 PM",
		Location:         "Open Air Theatre",
		OrganizerName:    "Cultural Committee",
		OrganizerContact: "culture@example.com",
		Description:      "An evening packed with bands, solo performances, and group dance showcases.",
		AboutEvent:       "RhythmVerse is the ultimate cultural extravaganza. From classical melodies to rock anthems, and folk dances to hip-hop face-offs, experience it all under the starry sky.",
		PosterURL:        "/events/music_poster.png",
		ImageURL:         "/events/music_poster.png",
		Prizes:           "Best Band: Studio Recording Time",
		RegistrationFee:  "$50 per team",
		TeamSize:         "Unlimited",
		CreatedByUID:     "organizer-demo-1",
	},
	{
		ID:               "ev4",
		Title:            "Fusion Fiesta – Cultural Carnival",
		Category:         domain.CategoryCultural,
		Date:             "2026-02-21",
		Time:             "10:00 AM – 05:00 PM",
		Location:         "Central Lawn",
		OrganizerName:    "Student Council",
		OrganizerContact: "council@example.com",
		Description:      "Experience a melting pot of cultures with food stalls, fashion walk, and games.",
		AboutEvent:       "Fusion Fiesta celebrates diversity with a carnival atmosphere. Enjoy global cuisines, traditional games, and a vibrant fashion show showcasing ethnic wear.",
		PosterURL:        "/events/culture_poster.png",
		ImageURL:         "/events/culture_poster.png",
		Prizes:           "Trophies and Certificates",
		RegistrationFee:  "Free entry",
		TeamSize:         "N/A",
		CreatedByUID:     "organizer-demo-3",
	},
	{
		ID:               "ev5",
		Title:            "NextGen Tech Summit",
		Category:         domain.CategoryTech,
		Date:             "2026-02-25",
		Time:             "10:00 AM – 04:00 PM",
		Location:         "Innovation Lab",
		OrganizerName:    "IEEE Student Chapter",
		OrganizerContact: "ieee@example.com",
		Description:      "Talks and panel discussions on AI, Web3, and cloud-native systems.",
		AboutEvent:       "A deep dive into the technologies shaping our future. Keynote speakers include industry leaders from Google, Microsoft, and innovative startups.",
		PosterURL:        "/events/tech_poster.png",
		ImageURL:         "/events/tech_poster.png",
		Prizes:           "Networking opportunities",
		RegistrationFee:  "$25",
		TeamSize:         "Individual",
		CreatedByUID:     "organizer-demo-2",
	},
	{
		ID:               "ev6",
		Title:            "Design Thinking Workshop",
		Category:         domain.CategoryWorkshops,
		Date:             "2026-02-28",
		Time:             "02:00 PM – 06:00 PM",
		Location:         "Seminar Hall 2",
		OrganizerName:    "Innovation Cell",
		OrganizerContact: "innovation@example.com",
		Description:      "Hands-on workshop covering empathy mapping, ideation, and rapid prototyping.",
		AboutEvent:       "Learn the core principles of design thinking in this interactive workshop. Perfect for aspiring product managers and UX designers.",
		PosterURL:        "/events/workshop_poster.png",
		ImageURL:         "/events/workshop_poster.png",
		Rules:            "Bring your own laptop.",
		Prizes:           "Certification of Completion",
		RegistrationFee:  "$15",
		TeamSize:         "Individual",
		CreatedByUID:     "organizer-demo-1",
	},
	{
		ID:               "ev7",
		Title:            "Inter-College Debate",
		Category:         domain.CategoryCultural,
		Date:             "2026-03-05",
		Time:             "10:00 AM – 01:00 PM",
		Location:         "Main Auditorium",
		OrganizerName:    "Debating Society",
		OrganizerContact: "debate@example.com",
		Description:      "A battle of wits and words on trending global topics.",
		AboutEvent:       "Debaters from across the region will compete in this high-stakes tournament. The topic will be released 24 hours prior.",
		BrochureURL:      "#",
		Rules:            "Teams of 2. Standard Parliamentary Debate format.",
		Prizes:           "Best Team: $500",
		RegistrationFee:  "Free",
		TeamSize:         "2 members",
		CreatedByUID:     "organizer-demo-99",
	},
}
