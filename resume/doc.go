// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package resume scrapes contact details out of an uploaded résumé so the
careers form can be pre-filled.

	f := resume.Extract(file, header.Filename, header.Header.Get("Content-Type"))
	// f.FirstName, f.LastName, f.Email, f.Phone, any may be ""

This is a best-effort heuristic, not a document parser. Extract never
returns an error; anything it cannot read yields empty Fields and the
applicant types the values in by hand.

# Decoding

  - Word (.doc, .docx, or a media type containing "word"): not supported,
    always empty
  - PDF: the text layer via unipdf when the file parses, otherwise every
    non-printable byte becomes a space and whitespace is collapsed
  - anything else: read as plain text

# Matching

  - email: first local@domain.tld
  - phone: first North American 3-3-4 number, optional +1 and parentheses
  - name: the first line when it is two or three letters-only words (a
    middle name is dropped), else the first of the first three lines that
    is exactly two letters-only words under 50 characters

Lines containing common résumé headings or job-title words ("Resume",
"Summary", "Software", "Engineer", ...) are never taken as a name.
*/
package resume
