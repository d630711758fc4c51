package exercise

const insertAlbum = `INSERT INTO albums (artist, album, genre, release_year) VALUES (?, ?, ?, ?)`

func init() {
	Register(&Exercise{
		Name:        "music-triggers",
		Title:       "Music collection: business rules as triggers",
		Description: "Duplicate album guard, protected The Beatles albums, archive on delete, forbidden genre.",
		Steps: []Step{
			Exec("Add The Dark Side of the Moon", SQL(insertAlbum, "Pink Floyd", "The Dark Side of the Moon", "Progressive Rock", 1973)),
			Exec("Add Nevermind", SQL(insertAlbum, "Nirvana", "Nevermind", "Grunge", 1991)),
			Exec("Add Abbey Road", SQL(insertAlbum, "The Beatles", "Abbey Road", "Rock", 1969)),
			Reject("Duplicate album is refused", SQL(insertAlbum, "Pink Floyd", "The Dark Side of the Moon", "Progressive Rock", 1973)),
			Reject("Dark Power Pop is refused", SQL(insertAlbum, "Test Band", "Dark Album", "Dark Power Pop", 2022)),
			Reject("Deleting The Beatles is refused", SQL(`DELETE FROM albums WHERE artist = 'The Beatles'`)),
			Exec("Delete Nirvana", SQL(`DELETE FROM albums WHERE artist = 'Nirvana'`)),
			Query("Album archive", `SELECT id, artist, album, release_year, delete_date FROM albums_archive`),
			Query("Albums in the collection", `SELECT id, artist, album, genre, release_year FROM albums ORDER BY id`),
		},
	})
}
