// Copyright (c) 2025 Golden Age Infotech.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package media stores uploaded images and résumés.

BlobStore has two implementations:

  - S3Store: PutObject into a bucket, public URL from S3_PUBLIC_URL or the
    bucket's virtual-hosted address
  - LocalStore: files under MEDIA_DIR, served by the router at /media/

InspectImage decodes just the image header (jpeg, png, gif, webp) and
reports the real content type, so an upload's declared type is never
trusted.
*/
package media
