package tmdb

import "filmoteca/internal/movie"

// Enrich returns a copy of rec with the film database fields filled in.
func (m Movie) Enrich(rec movie.Record) movie.Record {
	out := rec.Clone()
	out.Year = m.Year()
	out.Duration = m.Runtime
	out.Overview = m.Overview
	out.AudienceRating = m.VoteAverage

	out.Countries = make([]string, 0, len(m.ProductionCountries))
	for _, country := range m.ProductionCountries {
		out.Countries = append(out.Countries, country.Code)
	}

	out.Actors = make([]string, 0, min(len(m.Credits.Cast), movie.MaxCredits))
	for _, member := range m.Credits.Cast {
		if len(out.Actors) == movie.MaxCredits {
			break
		}
		out.Actors = append(out.Actors, member.Name)
	}

	out.Directors = []string{}
	for _, member := range m.Credits.Crew {
		if len(out.Directors) == movie.MaxCredits {
			break
		}
		if member.Job == jobDirector {
			out.Directors = append(out.Directors, member.Name)
		}
	}
	return out
}
