package exercise

const discListing = `SELECT d.id, d.title, a.name AS artist, p.name AS publisher,
		s.name AS style, d.release_date, d.total_tracks, d.duration, d.price
	FROM discs d
	LEFT JOIN artists a ON d.artist_id = a.id
	LEFT JOIN publishers p ON d.publisher_id = p.id
	LEFT JOIN styles s ON d.style_id = s.id`

const discByRelease = `SELECT d.id, d.title, a.name AS artist, d.release_date, s.name AS style
	FROM discs d
	LEFT JOIN artists a ON d.artist_id = a.id
	LEFT JOIN styles s ON d.style_id = s.id
	WHERE d.release_date IS NOT NULL`

func init() {
	Register(&Exercise{
		Name:        "music-catalog",
		Title:       "Music collection: catalogue procedures",
		Description: "Styles, publishers, artists, discs and songs; listings, rankings and cascading deletes done by hand.",
		Steps: []Step{
			Query("All discs, newest first", discListing+` ORDER BY d.release_date DESC`),
			Query("Discs published by Universal Music",
				discListing+` WHERE p.name = ? ORDER BY d.release_date DESC`, "Universal Music"),
			Query("Most popular style",
				`SELECT s.name, COUNT(d.id) AS disc_count
				FROM styles s
				LEFT JOIN discs d ON s.id = d.style_id
				GROUP BY s.id, s.name
				ORDER BY disc_count DESC, s.id
				LIMIT 1`),
			Query("Disc with the most tracks",
				`SELECT d.id, d.title, a.name AS artist, s.name AS style, d.total_tracks, d.release_date
				FROM discs d
				LEFT JOIN artists a ON d.artist_id = a.id
				LEFT JOIN styles s ON d.style_id = s.id
				ORDER BY d.total_tracks DESC
				LIMIT 1`),
			Query("Rock disc with the most tracks",
				`SELECT d.id, d.title, a.name AS artist, s.name AS style, d.total_tracks, d.release_date
				FROM discs d
				LEFT JOIN artists a ON d.artist_id = a.id
				LEFT JOIN styles s ON d.style_id = s.id
				WHERE s.name = ?
				ORDER BY d.total_tracks DESC
				LIMIT 1`, "Рок"),
			Exec("Delete hip-hop discs and their songs",
				SQL(`DELETE FROM songs
					WHERE disc_id IN (
						SELECT d.id FROM discs d JOIN styles s ON d.style_id = s.id WHERE s.name = ?
					)`, "Хип-хоп"),
				SQL(`DELETE FROM discs WHERE style_id IN (SELECT id FROM styles WHERE name = ?)`, "Хип-хоп")),
			Query("Oldest album", discByRelease+` ORDER BY d.release_date ASC LIMIT 1`),
			Query("Newest album", discByRelease+` ORDER BY d.release_date DESC LIMIT 1`),
			Exec("Delete discs with 'The' in the title and their songs",
				SQL(`DELETE FROM songs WHERE disc_id IN (SELECT id FROM discs WHERE title LIKE ?)`, "%The%"),
				SQL(`DELETE FROM discs WHERE title LIKE ?`, "%The%")),
			Query("Remaining discs", `SELECT id, title FROM discs ORDER BY id`),
			Query("Songs left per disc",
				`SELECT d.title, COUNT(s.id) AS songs
				FROM discs d
				LEFT JOIN songs s ON s.disc_id = d.id
				GROUP BY d.id
				ORDER BY d.id`),
		},
	})
}
