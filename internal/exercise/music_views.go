package exercise

func init() {
	Register(&Exercise{
		Name:        "music-views",
		Title:       "Music collection: views and writable views",
		Description: "Six reporting views plus five views made writable with INSTEAD OF triggers.",
		Steps: []Step{
			Query("All artists", `SELECT * FROM AllArtists`),
			Query("Full song information", `SELECT * FROM FullSongInfo`),
			Query("Discs by The Beatles", `SELECT * FROM BeatlesDiscs`),
			Query("Most popular artist", `SELECT * FROM MostPopularArtist`),
			Query("Top three artists", `SELECT * FROM Top3Artists`),
			Query("Longest album", `SELECT * FROM LongestAlbum`),
			Exec("Add genre Alternative Rock through InsertGenres",
				SQL(`INSERT INTO InsertGenres (name) VALUES (?)`, "Alternative Rock")),
			Reject("Duplicate genre through InsertGenres is refused",
				SQL(`INSERT INTO InsertGenres (name) VALUES (?)`, "Grunge")),
			Exec("Add song Lithium through InsertSongs",
				SQL(`INSERT INTO InsertSongs (title, disc_id, duration, genre_id) VALUES (?, ?, ?, ?)`, "Lithium", 3, 257, 3)),
			Exec("Rename Warner Bros through UpdatePublishers",
				SQL(`UPDATE UpdatePublishers SET name = ? WHERE name = ?`, "Warner Records", "Warner Bros")),
			Exec("Add artist Muse", SQL(`INSERT INTO Artists (name) VALUES (?)`, "Muse")),
			Query("Muse through UpdateMuse", `SELECT * FROM UpdateMuse`),
			Exec("Rename Muse through UpdateMuse", SQL(`UPDATE UpdateMuse SET name = ?`, "MUSE")),
			Exec("Remove MUSE through DeleteArtists", SQL(`DELETE FROM DeleteArtists WHERE name = ?`, "MUSE")),
			Query("Genres", `SELECT * FROM InsertGenres ORDER BY genre_id`),
			Query("Nirvana songs", `SELECT song_title, duration, genre FROM FullSongInfo WHERE artist = 'Nirvana'`),
			Query("Publishers", `SELECT * FROM UpdatePublishers ORDER BY publisher_id`),
			Query("Artists after the changes", `SELECT * FROM AllArtists`),
		},
	})
}
