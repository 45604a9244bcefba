package mockapi

import "strconv"

// Movie is a fixture entry. List endpoints serialize the summary fields;
// the detail endpoint adds the rest.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`

	Tagline string `json:"-"`
	Runtime int    `json:"-"` // minutes
	IMDbID  string `json:"-"`
	Budget  int64  `json:"-"`
	Revenue int64  `json:"-"`
}

var genreNames = map[int]string{
	12:    "Adventure",
	14:    "Fantasy",
	16:    "Animation",
	18:    "Drama",
	28:    "Action",
	35:    "Comedy",
	53:    "Thriller",
	80:    "Crime",
	878:   "Science Fiction",
	10749: "Romance",
	10751: "Family",
}

func m(id int64, title, date string, rating float64, votes int, pop float64, genres []int, runtime int, tagline, overview string) Movie {
	return Movie{
		ID:               id,
		Title:            title,
		OriginalTitle:    title,
		Overview:         overview,
		PosterPath:       "/poster" + strconv.FormatInt(id, 10) + ".jpg",
		BackdropPath:     "/backdrop" + strconv.FormatInt(id, 10) + ".jpg",
		ReleaseDate:      date,
		VoteAverage:      rating,
		VoteCount:        votes,
		Popularity:       pop,
		OriginalLanguage: "en",
		GenreIDs:         genres,
		Tagline:          tagline,
		Runtime:          runtime,
		IMDbID:           "tt" + strconv.FormatInt(1000000+id, 10),
	}
}

// catalog is the pool every default list is drawn from
var catalog = []Movie{
	m(278, "The Shawshank Redemption", "1994-09-23", 8.7, 27000, 98.1, []int{18, 80}, 142, "Fear can hold you prisoner. Hope can set you free.", "Imprisoned in the 1940s for the double murder of his wife and her lover, upstanding banker Andy Dufresne begins a new life at the Shawshank prison."),
	m(238, "The Godfather", "1972-03-14", 8.7, 20000, 110.4, []int{18, 80}, 175, "An offer you can't refuse.", "Spanning the years 1945 to 1955, a chronicle of the fictional Italian-American Corleone crime family."),
	m(240, "The Godfather Part II", "1974-12-20", 8.6, 12000, 60.2, []int{18, 80}, 202, "The rise and fall of the Corleone empire.", "In the continuing saga of the Corleone crime family, a young Vito Corleone grows up in Sicily and in 1910s New York."),
	m(424, "Schindler's List", "1993-12-15", 8.6, 15800, 55.3, []int{18}, 195, "Whoever saves one life, saves the world entire.", "The true story of how businessman Oskar Schindler saved over a thousand Jewish lives from the Nazis."),
	m(389, "12 Angry Men", "1957-04-10", 8.5, 8700, 30.8, []int{18}, 97, "Life is in their hands. Death is on their minds.", "The defense and the prosecution have rested and the jury is filing into the jury room to decide if a young Spanish-American is guilty or innocent."),
	m(129, "Spirited Away", "2001-07-20", 8.5, 16500, 90.5, []int{16, 10751, 14}, 125, "The tunnel led Chihiro to a mysterious town.", "A young girl, Chihiro, becomes trapped in a strange new world of spirits."),
	m(155, "The Dark Knight", "2008-07-16", 8.5, 33000, 130.7, []int{18, 28, 80, 53}, 152, "Welcome to a world without rules.", "Batman raises the stakes in his war on crime."),
	m(680, "Pulp Fiction", "1994-09-10", 8.5, 28000, 88.0, []int{53, 80}, 154, "Just because you are a character doesn't mean you have character.", "A burger-loving hit man, his philosophical partner, a drug-addled gangster's moll and a washed-up boxer converge in this sprawling crime caper."),
	m(13, "Forrest Gump", "1994-06-23", 8.5, 27500, 95.6, []int{35, 18, 10749}, 142, "The world will never be the same once you've seen it through the eyes of Forrest Gump.", "A man with a low IQ has accomplished great things in his life and been present during significant historic events."),
	m(122, "The Lord of the Rings: The Return of the King", "2003-12-01", 8.5, 24000, 120.9, []int{12, 14, 28}, 201, "The eye of the enemy is moving.", "As armies mass for a final battle against Sauron, Frodo and Sam continue their quest."),
	m(550, "Fight Club", "1999-10-15", 8.4, 30000, 85.2, []int{18}, 139, "Mischief. Mayhem. Soap.", "A ticking-time-bomb insomniac and a slippery soap salesman channel primal male aggression into a shocking new form of therapy."),
	m(27205, "Inception", "2010-07-15", 8.4, 37000, 140.3, []int{28, 878, 12}, 148, "Your mind is the scene of the crime.", "Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets, is offered a chance to regain his old life."),
	m(157336, "Interstellar", "2014-11-05", 8.4, 35000, 150.2, []int{12, 18, 878}, 169, "Mankind was born on Earth. It was never meant to die here.", "The adventures of a group of explorers who make use of a newly discovered wormhole to surpass the limitations on human space travel."),
	m(496243, "Parasite", "2019-05-30", 8.5, 18000, 75.4, []int{35, 53, 18}, 133, "Act like you own the place.", "All unemployed, Ki-taek's family takes peculiar interest in the wealthy and glamorous Parks for their livelihood."),
	m(603, "The Matrix", "1999-03-31", 8.2, 25000, 99.9, []int{28, 878}, 136, "Welcome to the Real World.", "Set in the 22nd century, The Matrix tells the story of a computer hacker who joins a group of underground insurgents."),
	m(120, "The Lord of the Rings: The Fellowship of the Ring", "2001-12-18", 8.4, 25500, 118.0, []int{12, 14, 28}, 179, "One ring to rule them all.", "Young hobbit Frodo Baggins inherits the One Ring and must destroy it."),
	m(11, "Star Wars", "1977-05-25", 8.2, 20500, 80.5, []int{12, 28, 878}, 121, "A long time ago in a galaxy far, far away...", "Princess Leia is held hostage by the evil Imperial forces in their effort to take over the galactic Empire."),
	m(105, "Back to the Future", "1985-07-03", 8.3, 19500, 70.1, []int{12, 35, 878}, 116, "He's the only kid ever to get into trouble before he was born.", "Eighties teenager Marty McFly is accidentally sent back in time to 1955."),
	m(862, "Toy Story", "1995-10-30", 8.0, 18000, 100.8, []int{16, 12, 10751, 35}, 81, "The adventure takes off!", "Led by Woody, Andy's toys live happily in his room until Andy's birthday brings Buzz Lightyear onto the scene."),
	m(329, "Jurassic Park", "1993-06-11", 7.9, 16000, 65.5, []int{12, 878}, 127, "An adventure 65 million years in the making.", "A wealthy entrepreneur secretly creates a theme park featuring living dinosaurs drawn from prehistoric DNA."),
	m(693134, "Dune: Part Two", "2024-02-27", 8.2, 6000, 310.4, []int{878, 12}, 167, "Long live the fighters.", "Follow the mythic journey of Paul Atreides as he unites with Chani and the Fremen."),
	m(872585, "Oppenheimer", "2023-07-19", 8.1, 9000, 250.7, []int{18}, 181, "The world forever changes.", "The story of J. Robert Oppenheimer's role in the development of the atomic bomb during World War II."),
	m(1022789, "Inside Out 2", "2024-06-11", 7.6, 4000, 400.3, []int{16, 10751, 35}, 97, "Make room for new emotions.", "Teenager Riley's mind headquarters is undergoing a sudden demolition to make room for something entirely unexpected."),
	m(533535, "Deadpool & Wolverine", "2024-07-24", 7.7, 5000, 520.1, []int{28, 35, 878}, 128, "Come together.", "A listless Wade Wilson toils away in civilian life with his days as the morally flexible mercenary behind him."),
	m(1184918, "The Wild Robot", "2026-11-20", 0, 0, 610.2, []int{16, 878, 10751}, 102, "Discover your true nature.", "After a shipwreck, an intelligent robot called Roz is stranded on an uninhabited island."),
	m(912649, "Venom: The Last Dance", "2026-12-11", 0, 0, 580.4, []int{878, 28}, 109, "'Til death do they part.", "Eddie and Venom are on the run."),
	m(1241982, "Moana 2", "2026-11-27", 0, 0, 540.6, []int{16, 12, 10751}, 100, "The ocean is calling them back.", "After receiving an unexpected call from her wayfinding ancestors, Moana journeys alongside Maui and a new crew."),
	m(402431, "Wicked", "2026-11-22", 0, 0, 420.8, []int{18, 14, 10749}, 160, "Everyone deserves the chance to fly.", "In the land of Oz, ostracized and misunderstood green-skinned Elphaba is forced to share a room with the popular Glinda."),
}

func pick(ids ...int64) []Movie {
	byID := make(map[int64]Movie, len(catalog))
	for _, mv := range catalog {
		byID[mv.ID] = mv
	}
	out := make([]Movie, 0, len(ids))
	for _, id := range ids {
		if mv, ok := byID[id]; ok {
			out = append(out, mv)
		}
	}
	return out
}

// DefaultLists returns the fixture listing for every category, keyed by
// API path segment.
func DefaultLists() map[string][]Movie {
	return map[string][]Movie{
		"now_playing": pick(693134, 872585, 1022789, 533535, 27205, 157336, 155, 496243),
		"popular": pick(533535, 1022789, 693134, 872585, 157336, 27205, 155, 238, 122, 120,
			603, 278, 862, 13, 129, 680, 550, 11, 105, 329, 496243, 240),
		"top_rated": pick(278, 238, 240, 424, 389, 129, 155, 680, 13, 122, 496243, 550,
			27205, 157336, 120, 105, 603, 11, 693134, 872585, 862, 329),
		"upcoming": pick(1184918, 912649, 1241982, 402431),
	}
}
